// Package extraction - prompt.go builds the structured extraction prompt.
package extraction

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxResumeChars bounds how much resume text is submitted per extraction call.
const maxResumeChars = 4000

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ParsedResume")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", etc.
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
// Input text is truncated to maxResumeChars before submission; the cut never
// splits a multi-byte rune.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	if len(inputText) > maxResumeChars {
		cut := maxResumeChars
		for cut > 0 && !utf8.RuneStart(inputText[cut]) {
			cut--
		}
		inputText = inputText[:cut]
	}

	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Use null for fields that are missing from the resume.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Resume text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ResumeSchema returns the extraction schema for uploaded resumes.
// Fields mirror ParsedResume.
func ResumeSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ParsedResume",
		Description: `You are an expert ATS (Applicant Tracking System) that extracts structured data from resumes.
Extract information accurately and format it as JSON.`,
		Fields: []SchemaField{
			{
				Name:        "name",
				Type:        "\"string\"",
				Description: "Candidate full name",
				Required:    false,
			},
			{
				Name:        "email",
				Type:        "\"string\"",
				Description: "Contact email address",
				Required:    false,
			},
			{
				Name:        "phone",
				Type:        "\"string\"",
				Description: "Contact phone number",
				Required:    false,
			},
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "Current or target job title",
				Required:    false,
			},
			{
				Name:        "location",
				Type:        "\"string\"",
				Description: "City, State/Country",
				Required:    false,
			},
			{
				Name:        "summary",
				Type:        "\"string\"",
				Description: "Brief professional summary (2-3 sentences)",
				Required:    false,
			},
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: "All technical and professional skills listed",
				Required:    true,
			},
			{
				Name:        "experience",
				Type:        "\"string\"",
				Description: "Total experience, e.g. '5 years'",
				Required:    false,
			},
			{
				Name:        "work_history",
				Type:        "[{\"title\", \"company\", \"duration\", \"description\"}]",
				Description: "Positions in order of appearance",
				Required:    false,
			},
			{
				Name:        "education",
				Type:        "[{\"degree\", \"institution\", \"year\"}]",
				Description: "Degrees and programs",
				Required:    false,
			},
			{
				Name:        "certifications",
				Type:        "[\"string\"]",
				Description: "Certification names",
				Required:    false,
			},
		},
	}
}
