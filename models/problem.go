package models

// Problem is an RFC-7807 style problem document, the structured error body
// services return under "application/problem+json" or a vendor problem type.
type Problem struct {
	Type     string `json:"type,omitempty" bson:"type,omitempty" yaml:"type,omitempty"`
	Title    string `json:"title,omitempty" bson:"title,omitempty" yaml:"title,omitempty"`
	Status   int    `json:"status,omitempty" bson:"status,omitempty" yaml:"status,omitempty"`
	Detail   string `json:"detail,omitempty" bson:"detail,omitempty" yaml:"detail,omitempty"`
	Instance string `json:"instance,omitempty" bson:"instance,omitempty" yaml:"instance,omitempty"`
}
