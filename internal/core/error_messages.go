package core

// # Error Codes Reference
//
// Errors shown to users carry a code they can quote for support.
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - No valid clubs: the club table had no row with a positive
//	         club_id and a name. Patterns: "no valid clubs"
//	IMP002 - Invalid game: saved game number outside 1-8.
//	         Patterns: "invalid game number"
//	IMP003 - No installation: the PM3 directory is not configured.
//	         Patterns: "installation path is not configured"
//
// # Save File Errors (SAVE001-SAVE099)
//
//	SAVE001 - Wrong size: a save file is not the expected length.
//	          Patterns: "invalid save structure size", "unexpected trailing data"
//	SAVE002 - Missing save: the target's files could not be opened.
//	          Patterns: "open save file"
//	SAVE003 - Backup missing: the backup directory holds no target files.
//	          Patterns: "backup not found"
//	SAVE004 - Write failed: saving or backing up failed on disk.
//	          Patterns: "create backup directory", "permission denied", "no space left"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Too large: the upload exceeds the size limit.
//	          Patterns: "request body too large", "file too large"
//	FILE002 - No file: a table was not attached. Patterns: "no file provided"
//	FILE003 - Empty file: a table has no header row. Patterns: "empty file"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL001 - Busy: another import holds the save. Patterns: "import in progress"
//	UPL002 - Cancelled. Patterns: "context canceled"
//	UPL003 - Timed out. Patterns: "context deadline exceeded"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid number in a form value. Patterns: "invalid number"
//	VAL002 - Unknown export format. Patterns: "unknown kit export format"
//	VAL003 - Conflicting target. Patterns: "choose either"
//	VAL004 - Invalid boolean in a form value. Patterns: "invalid boolean"
//	VAL005 - Season year out of range. Patterns: "invalid season year"
//
// # History and Database Errors (HIST001, DB001-DB099)
//
//	HIST001 - History disabled. Patterns: "run history is not configured"
//	DB001   - Connection refused. Patterns: "connection refused"
//	DB002   - Timeout. Patterns: "timeout"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests. Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the logs for the original error.
//
// Patterns are matched case-insensitively with strings.Contains. The first
// matching pattern wins, so specific patterns precede general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Import
	{
		pattern: "no valid clubs",
		msg: UserMessage{
			Message: "The club table has no usable rows",
			Action:  "Each club needs a positive club_id and a club_name",
			Code:    "IMP001",
		},
	},
	{
		pattern: "invalid game number",
		msg: UserMessage{
			Message: "Saved game number must be between 1 and 8",
			Action:  "Pick a saved game slot from 1 to 8, or import into the base data",
			Code:    "IMP002",
		},
	},
	{
		pattern: "installation path is not configured",
		msg: UserMessage{
			Message: "The PM3 installation directory is not configured",
			Action:  "Set PM3_PATH or pass --pm3",
			Code:    "IMP003",
		},
	},

	// Save files
	{
		pattern: "invalid save structure size",
		msg: UserMessage{
			Message: "A save file has an unexpected size",
			Action:  "Check that the target is a PM3 save, or restore it from a backup",
			Code:    "SAVE001",
		},
	},
	{
		pattern: "unexpected trailing data",
		msg: UserMessage{
			Message: "A save file is larger than expected",
			Action:  "Check that the target is a PM3 save, or restore it from a backup",
			Code:    "SAVE001",
		},
	},
	{
		pattern: "open save file",
		msg: UserMessage{
			Message: "The save files could not be opened",
			Action:  "Check the installation path and that the saved game exists",
			Code:    "SAVE002",
		},
	},
	{
		pattern: "backup not found",
		msg: UserMessage{
			Message: "The backup has no files for this target",
			Action:  "Pick a backup taken from the same saved game",
			Code:    "SAVE003",
		},
	},
	{
		pattern: "create backup directory",
		msg: UserMessage{
			Message: "The backup could not be written",
			Action:  "Check that the installation directory is writable",
			Code:    "SAVE004",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The save files could not be written",
			Action:  "Check that the installation directory is writable",
			Code:    "SAVE004",
		},
	},
	{
		pattern: "no space left",
		msg: UserMessage{
			Message: "The disk is full",
			Action:  "Free some space and try again",
			Code:    "SAVE004",
		},
	},

	// Files
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "Upload exceeds the maximum size",
			Action:  "Trim the tables or raise IMPORT_MAX_UPLOAD_SIZE",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Upload exceeds the maximum size",
			Action:  "Trim the tables or raise IMPORT_MAX_UPLOAD_SIZE",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "A table was not attached",
			Action:  "Attach both the clubs and the players CSV",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "A table is empty",
			Action:  "Upload a CSV with a header row",
			Code:    "FILE003",
		},
	},

	// Runs
	{
		pattern: "import in progress",
		msg: UserMessage{
			Message: "Another import is writing to the save",
			Action:  "Please wait a moment and try again",
			Code:    "UPL001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "UPL003",
		},
	},

	// Validation
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "A numeric option is not a number",
			Action:  "Use whole numbers for game, year and max_players",
			Code:    "VAL001",
		},
	},
	{
		pattern: "unknown kit export format",
		msg: UserMessage{
			Message: "Unknown export format",
			Action:  "Use format=csv or format=text",
			Code:    "VAL002",
		},
	},
	{
		pattern: "choose either",
		msg: UserMessage{
			Message: "Choose one target",
			Action:  "Pass a saved game number (1-8) or the base data, not both",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid boolean",
		msg: UserMessage{
			Message: "A yes/no option is not a boolean",
			Action:  "Use true or false for base, import_loans and backup",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid season year",
		msg: UserMessage{
			Message: "Season year out of range",
			Action:  "Pass a year such as 2025, or leave it empty to keep the stored year",
			Code:    "VAL005",
		},
	},

	// History and database
	{
		pattern: "run history is not configured",
		msg: UserMessage{
			Message: "Run history is not enabled",
			Action:  "Set DATABASE_URL or HISTORY_SQLITE_PATH",
			Code:    "HIST001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB002",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the server logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. The first
// matching pattern wins; unmatched errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
