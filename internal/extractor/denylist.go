package extractor

// nonGraphCalls lists well-known helper names that appear as bare-identifier
// calls inside workflow and component bodies but never denote another
// definition: model construction, text generation, embedding, and tool
// helpers from common LLM SDKs. Without this table those calls would be
// mistaken for graph edges to undefined targets.
//
// Kept as an explicit, inspectable constant table; extend it here rather
// than in traversal code.
var nonGraphCalls = map[string]bool{
	"generateText":   true,
	"streamText":     true,
	"generateObject": true,
	"streamObject":   true,
	"embed":          true,
	"embedMany":      true,
	"tool":           true,
	"openai":         true,
	"anthropic":      true,
	"groq":           true,
	"wrapOpenAI":     true,
	"createContext":  true,
	"useContext":     true,
	"useBlob":        true,
}
