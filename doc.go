/*
Package stake defines all common interfaces used to wire together the
betting escrow chain: addresses and conditions, transactions and messages,
handlers, stores and the context values passed between them.

We pass context through context.Context between app, middleware, and
handlers. Each extension may add its own keys to enrich the context with
specific data.

There should exist two functions for every XYZ of type T
that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package stake
