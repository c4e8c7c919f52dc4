// Package store persists instance state as one JSON record per prefix.
//
// Records live in a cache directory (default ~/.instab/cache):
//
//	acme.json
//	{
//	    "color": "#ff0000",
//	    "urls": [
//	        "https://a.com",
//	        "https://b.com"
//	    ]
//	}
//
// # Reading
//
// [Store.LoadAll] creates the directory if it is missing and reads every
// *.json file. A record that cannot be parsed is skipped and reported in
// [Loaded.Skipped]; the remaining records still load.
//
// # Writing
//
// [Store.SaveAll] writes each record atomically (temp file + rename) while
// holding an flock on .instab.lock. It never deletes files; stale records
// are removed explicitly with [Store.Delete].
//
// Prefixes are validated with the prefix package before any path is built,
// so a record can never be written outside the cache directory.
package store
