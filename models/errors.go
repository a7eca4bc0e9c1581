package models

// ErrorItem is a single entry of a vendor structured-error list.
type ErrorItem struct {
	Code    string `json:"code,omitempty" bson:"code,omitempty" yaml:"code,omitempty"`
	Message string `json:"message" bson:"message" yaml:"message"`
}

// ErrorsDocument is the vendor structured-error body, shaped as
// {"errors": [{"message": ...}, ...]}.
type ErrorsDocument struct {
	Errors []ErrorItem `json:"errors" bson:"errors" yaml:"errors"`
}

// Messages collects the message field of every entry, in order.
func (document *ErrorsDocument) Messages() []string {
	messages := make([]string, len(document.Errors))
	for index, item := range document.Errors {
		messages[index] = item.Message
	}
	return messages
}
