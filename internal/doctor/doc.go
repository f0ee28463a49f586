// Package doctor checks that the external installers the catalog relies on
// (node, npm, npx, uvx) are available, that Node.js is recent enough, and that
// the user catalog file passes schema validation.
package doctor
