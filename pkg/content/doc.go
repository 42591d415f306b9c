// Package content models the on-disk portfolio layout:
//
//	<content>/<projects>/<category>/<slug>/{meta.json, index.mdx, assets/*}
//
// It provides directory discovery, ordered metadata decoding, JSON value kinds
// and hero/cover/gallery asset selection shared by the audit,
// index and sync commands. Every function takes explicit paths; nothing here
// consults the process working directory.
package content
