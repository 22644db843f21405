/*
Package errors implements custom error interfaces for custody.

Error declarations should be generic and cover broad range of cases. Each
returned error instance can wrap a generic error declaration to provide more
details.

Each error carries an ABCI code. An error returned by a transaction is
converted into an ABCI response using ABCIInfo.

	return errors.Wrap(errors.ErrNotFound, "escrow")
	return errors.Wrapf(errors.ErrAmount, "need %d", want)
*/
package errors
