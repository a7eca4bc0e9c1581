// Arbitrarily encode and decode message body content.
/*
The encoding package provides a single interface for serializing and
deserializing payloads of any supported content type, so that request bodies
and response bodies can be encoded or decoded dynamically based on the
negotiated media type, without mimetype-specific methods being called
explicitly by the developer.

Default engines handle the JSON, BSON, YAML and plain-text families. Support
for additional content types can be added by registering custom encoders, and
an engine declared once in a shared library upgrades every client built on it.
*/
package encoding
