// Package main provides the entry point for the UserGate identity service.
// It runs a Fiber based REST API for a multi-tenant user directory: credential
// verification, signed bearer-token issuance and validation, role-based access
// control on management endpoints, and batch assignment of roles to users.
// Persistence is handled by gorm with SQLite, MySQL, or PostgreSQL backends.
package main
