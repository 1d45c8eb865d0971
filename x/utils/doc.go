/*
Package utils contains the decorators shared by every route of the
application: panic recovery, request logging and savepoints that write all
changes of a request at once or none of them.
*/
package utils
