// Package builtin embeds the starter skills shipped inside the skillet
// binary. They are loaded after on-disk skills, so a user skill with the
// same name always takes precedence.
package builtin

import "embed"

// FS contains the embedded starter skill files. Walk from "skills" to
// iterate over all of them.
//
//go:embed skills
var FS embed.FS

// Source is the metadata source label attached to embedded skills.
const Source = "builtin"
