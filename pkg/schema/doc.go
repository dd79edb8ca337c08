// Package schema loads and serves the questionnaire definition: the ordered
// field list, option lookups, default answers and localized message
// templates. Definitions are embedded YAML documents, one per language;
// picking a language is a static lookup resolved once at startup. A loaded
// schema is read-only.
package schema
