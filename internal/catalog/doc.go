// Package catalog provides the product and category domain for the
// HuertoHogar API.
//
// Products belong to the user who created them; updates and deletes are
// restricted to the owner or an admin (enforced at the API layer, where
// the authenticated principal is known). Categories are a flat, read-only
// lookup table; products reference them by name.
//
// Persistence follows the same repository pattern as the auth package:
// an interface per aggregate with a Postgres implementation, equality
// lookups only.
package catalog
