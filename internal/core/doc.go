// Package core runs imports against a PM3 installation.
//
// It is transport independent: the command line tool and the HTTP server
// both drive a [Service].
//
// # Import Run
//
// [Service.Run] performs one import:
//
//  1. Lock the target's save files ([ImportLimiter]); busy callers get [ErrImportBusy]
//  2. Back up the target's save files (optional, zstd compressed)
//  3. Load the three save structures
//  4. Apply the requested season year and work out the base year
//  5. Write clubs, squads and league tiers with [importer.Import]
//  6. Store the save files
//  7. Record the run in the history store and the metrics registry
//
// A run that fails after loading never writes the save files.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a code prefix for support reference:
//
//   - IMP: import input problems
//   - SAVE: save file problems
//   - FILE, UPL, VAL: request problems
//   - HIST, DB: run history problems
package core
