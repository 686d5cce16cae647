package watcher

// messageRule maps one interest bit to its notification text.
type messageRule struct {
	kind    Kind
	message string
}

// messageRules is ordered by priority. A record whose mask carries several
// interest bits gets the message of the first rule that matches.
var messageRules = []messageRule{
	{KindCreate, "File created"},
	{KindDelete, "File deleted"},
	{KindAccess, "File accessed"},
	{KindModify, "File modified"},
	{KindCloseWrite, "File closed for writing"},
	{KindMoveSelf, "File moved"},
}

// Classify returns the notification message for a record.
// Records outside the interest set have no message; that is not an error.
func Classify(r Record) (string, bool) {
	return Message(r.Kind)
}

// Message returns the notification message for an event mask.
func Message(k Kind) (string, bool) {
	for _, rule := range messageRules {
		if k.Has(rule.kind) {
			return rule.message, true
		}
	}
	return "", false
}
