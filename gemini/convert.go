package gemini

import (
	"encoding/json"

	"github.com/fwojciec/chat"
	"google.golang.org/genai"
)

// ConvertEntries converts session entries to genai contents.
// Exported for testing.
func ConvertEntries(entries []chat.Entry) []*genai.Content {
	var result []*genai.Content
	for _, entry := range entries {
		switch e := entry.(type) {
		case chat.UserEntry:
			result = append(result, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: e.Text}},
			})
		case chat.ModelEntry:
			var parts []*genai.Part
			if e.Text != "" {
				parts = append(parts, &genai.Part{Text: e.Text})
			}
			for _, call := range e.Calls {
				// Arguments came from the model; unparseable text is sent
				// back without args rather than dropping the call.
				var args map[string]any
				_ = json.Unmarshal([]byte(call.Arguments), &args)
				parts = append(parts, &genai.Part{
					FunctionCall:     &genai.FunctionCall{Name: call.Name, Args: args},
					ThoughtSignature: call.Signature,
				})
			}
			if len(parts) == 0 {
				continue
			}
			result = append(result, &genai.Content{Role: "model", Parts: parts})
		case chat.ToolResultEntry:
			result = append(result, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						Name:     e.Name,
						Response: map[string]any{"output": e.Result},
					},
				}},
			})
		}
	}
	return result
}

// ConvertTools converts tool definitions to a single genai tool holding
// one function declaration per tool. All parameters are strings.
// Exported for testing.
func ConvertTools(tools []chat.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(t.Params)),
		}
		for _, p := range t.Params {
			schema.Properties[p.Name] = &genai.Schema{Type: genai.TypeString, Description: p.Description}
			if p.Required {
				schema.Required = append(schema.Required, p.Name)
			}
		}
		decls[i] = &genai.FunctionDeclaration{
			Name:        string(t.Name),
			Description: t.Description,
			Parameters:  schema,
		}
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func systemInstruction(prompt string) *genai.Content {
	if prompt == "" {
		return nil
	}
	return &genai.Content{Parts: []*genai.Part{{Text: prompt}}}
}
