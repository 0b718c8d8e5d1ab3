// Package services implements the driving port interfaces.
// Services contain the mapping and assembly logic between extracted
// documents, user queries and the search engine collaborator, and
// orchestrate calls to driven ports (adapters).
package services
