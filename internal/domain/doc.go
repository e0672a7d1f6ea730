// Package domain defines the core business entities of the task API and the
// validation rules that apply to them. It has no knowledge of storage or
// transport concerns; those layers translate to and from these types.
package domain
