// Package scaffold generates the files a fresh vault is seeded with: sample
// posts, Obsidian plugin settings and .gitignore entries.
package scaffold

// sampleBody is the Markdown body of a category's welcome post. %s is the
// title-cased category name.
const sampleBody = `
# Welcome to %s!

This is a sample post. You can delete this and start writing your own content.

## How to Write

1. Create a new ` + "`.md`" + ` file in this folder
2. Add the YAML frontmatter at the top
3. Write your content in Markdown
4. Set ` + "`status: \"published\"`" + ` when ready

Happy writing!
`
