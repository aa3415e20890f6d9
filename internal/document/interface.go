package document

// Renderer converts markdown summary text into a styled document file.
type Renderer interface {
	Render(title, markdown, outputPath string) error
}

// ContentType is the MIME type of rendered documents.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
