// Package docdrift detects drift between a Python codebase's public API
// surface and its documentation: undocumented symbols, dangling
// cross-references, broken local and external links, undocumented
// parameters.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or mechanism (e.g., treesitter/, http/,
// gemini/). The orchestrator lives in check/.
package docdrift
