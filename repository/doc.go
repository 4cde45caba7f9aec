// Package repository defines the storage contract the service layer depends
// on and provides a generic reference implementation built on Bun with
// soft-delete, restore, and column-keyed payload support.
package repository
