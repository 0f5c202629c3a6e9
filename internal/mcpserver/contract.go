package mcpserver

// OutlineFormatContract describes the Markdown outline accepted by the
// import_board tool.
const OutlineFormatContract = `# Boardhub Outline Format

A board can be imported from a Markdown outline.

## Structure

` + "```" + `markdown
---
title: Q3 launch                # REQUIRED unless the body starts with "# Title"
description: Everything for Q3  # OPTIONAL
---

## Todo
- Write docs
  Indented lines below a card become its description.
- [ ] Record demo

## Done
- [x] Pick a name
` + "```" + `

## Rules

1. The board title comes from frontmatter ` + "`" + `title` + "`" + `, otherwise from the first ` + "`" + `# ` + "`" + ` heading.
2. Every ` + "`" + `## ` + "`" + ` heading starts a list, in document order.
3. Every top-level ` + "`" + `- ` + "`" + ` or ` + "`" + `* ` + "`" + ` bullet is a card in the current list. Task boxes are stripped.
4. Lines indented by two spaces or a tab under a card form its description.
5. A bullet before the first list heading is an error.
6. List and card titles must not be empty.
`
