/*
Package utils contains decorators shared by all extensions: panic
recovery, logging, transaction savepoints and action tags.
*/
package utils
