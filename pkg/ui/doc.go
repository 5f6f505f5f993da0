// Package ui selects the output format: rich terminal, plain text or JSON.
package ui
