/*
Package resource implements the async lifecycle shared by every slice of
client state.

A Slice owns one state value. Operations are dispatched against it and move
through pending, fulfilled and rejected:

  - pending: the operation id joins the pending set and the flash messages clear
  - fulfilled: Op.Reduce merges the result into state and the success message is set
  - rejected: the error message is recorded and state data is left as is

Each dispatch takes the next sequence number of its slice. Results are applied
only when their sequence is newer than the last one applied in the same lane,
so a slow list fetch can never overwrite the result of a fetch issued after it.
Canceled operations settle silently.

Collections are copy on write; a Snapshot can be read while newer operations
settle.
*/
package resource
