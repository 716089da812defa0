// Package models defines the shared domain types used across ocrsetup:
// package specifications, setup profiles, and OCR engine selection.
// It has no dependencies on internal packages so that both the config
// layer and the provisioning layer can share these types.
package models
