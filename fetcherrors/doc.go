/*
Fetch error model definition and the classification variants produced by the
dispatch engine.

The taxonomy is a closed tagged union: every classified failure is a FetchError
carrying exactly one Kind, so callers can match exhaustively on the variant
instead of probing nominal subtypes.

Two main objects are defined for handling errors:

• Kind tags the classification variant.

• FetchError is an instance of a classified failure, carrying the variant, a
deterministic message, the offending response metadata and the parsed
diagnostic payload.
*/
package fetcherrors
