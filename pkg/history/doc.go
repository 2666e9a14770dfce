// Package history is the undo/redo engine of the voxel editor.
//
// A Store keeps a linear list of Groups and a cursor into it. Every scene
// mutation is recorded through one of the Record* methods, which stores
// only the fields that changed for that kind of edit. Undo steps the
// cursor back and rebuilds the pre-edit value of each changed field by
// searching earlier history for the same node; Redo steps forward and
// returns the stored group as is. The Store never touches the scene
// graph: callers apply the returned groups themselves, usually while
// holding the store lock so the replay is not recorded again.
package history
