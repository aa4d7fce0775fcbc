/*
Package cash defines a simple implementation of sending coins
between wallets.

There is a single asset and no logic in it, except that the balance
of any wallet may not go below zero. Thus, this implementation is
referred to as cash. Simple and safe.

Other extensions move funds through the Controller rather than touching
the wallet bucket directly.
*/
package cash
