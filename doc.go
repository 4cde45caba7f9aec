// Package ignix provides a generic CRUD service layer that returns typed
// Results instead of Go errors: repository outcomes are normalized into a
// closed ServiceError taxonomy, and a legacy bridge adapts Result-based
// services back to the conventional value-comma-error contract.
package ignix
