// Package todo loads, mutates, and persists the todo list.
//
// The list file (1.json by default) holds the whole list as one JSON document:
//
//	{
//	  "list": [
//	    {
//	      "content": "buy milk",
//	      "state": "NotFinished"
//	    },
//	    {
//	      "content": "walk dog",
//	      "state": "Finished"
//	    }
//	  ]
//	}
//
// # Store
//
// A Store owns the file. Load reads it once per invocation and Save rewrites
// it in full after every mutation. A missing file is created with an empty
// list; a zero-length file loads as an empty list without parsing. Non-empty
// content must decode and pass the embedded JSON Schema (todo.schema.json).
//
// # Indices
//
// Users address items by 1-based position, matching the numbering printed by
// list. Every index in a batch is parsed and bounds-checked before the list
// is touched, so a bad argument leaves both memory and disk unchanged.
// Duplicate indices collapse to one.
//
// Removal always runs from the highest position to the lowest so earlier
// removals never shift positions that are still pending.
//
// # Item States
//
//   - "NotFinished": item is open
//   - "Finished": item is complete; there is no transition back
package todo
