// Package storage provides persistent storage for the SmartPantry services.
// It uses BadgerDB as the embedded database and stores values as JSON under string keys.
package storage
