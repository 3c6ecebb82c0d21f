package celestial

import "fmt"

// SystemPrompt frames the model as an astronomer for every request.
const SystemPrompt = "You are an expert astronomer. Identify celestial objects and provide accurate, " +
	"factual information about them. Always answer by calling the celestial_info function " +
	"with every field filled in."

// ImageInstruction is the fixed user text sent alongside an uploaded image.
const ImageInstruction = "Identify the celestial object shown in this image and provide detailed information about it."

// TextInstruction builds the user message for a by-name query.
func TextInstruction(query string) string {
	return fmt.Sprintf("Provide detailed information about the celestial object named %q.", query)
}
