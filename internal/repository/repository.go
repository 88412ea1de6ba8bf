// Package repository handles all interactions with the database.
//
// It contains the SQL queries and methods to fetch, persist or update
// records, abstracting SQL away from the service layer. Repositories are
// always bound to a single transaction handed out by a Store.
package repository
