// Package service contains the application use cases. It validates input
// against domain rules and coordinates the stores defined in internal/store,
// applying transactional boundaries where an operation spans several writes.
//
// The service layer depends on domain entities and store interfaces, never
// on a specific storage implementation.
package service
