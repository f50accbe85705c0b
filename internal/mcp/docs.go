package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `countdown keeps an in-memory list of events and reports how long remains until each one.

Core concepts:
- Event: id, title, target_time (RFC 3339) and an opaque color.
- Countdown: "active" with hours/minutes/seconds remaining, or "expired" once target_time is reached.
- Mode: "numeric" renders hh:mm:ss, "relative" renders labels such as "in 2 days".

Workflow:
1) list_events to see everything in date order.
2) add_event / update_event / remove_event always address events by id.
3) get_countdown for a fresh reading; numbers change every second, relative labels every minute.

Events are not persisted; restarting the server clears them.`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "countdown://docs/usage",
		Name:        "usage",
		Title:       "Countdown usage",
		Description: "How events, countdown states and format modes fit together",
		Content: `# Countdown usage

## Events

Every tool addresses events by ` + "`id`" + `. List order is by ` + "`target_time`" + `, ties by id, and never
reflects insertion order, so do not address events by position.

## Countdown states

- ` + "`active`" + `: ` + "`hours`" + `, ` + "`minutes`" + ` and ` + "`seconds`" + ` are the remaining time truncated to whole seconds.
- ` + "`expired`" + `: the target time is now or in the past; the label reads "Event Passed".

## Modes

- ` + "`numeric`" + `: zero-padded ` + "`hh:mm:ss`" + `; hours are not capped at 24.
- ` + "`relative`" + `: "in a moment", "in 45 seconds", "in 1 hour", "in 3 days".

## Errors

- ` + "`NOT_FOUND`" + `: no event with that id.
- ` + "`DUPLICATE_ID`" + `: add_event with an id already in use.
- ` + "`INVALID_ARGUMENT`" + `: malformed timestamp, unknown mode or missing id.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
