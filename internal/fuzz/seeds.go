package fuzztests

import (
	"testing"

	"tsdoc/internal/tags"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var commentSeeds = []string{
	"",
	"/** */",
	"/**\n * Summary.\n * @param a - the first\n * @returns the sum\n */",
	"/** {@link Foo | the foo} and `code` */",
	"/** {@inheritDoc Base.member} @public @beta */",
	"/** @remarks\n * Text { unescaped } and \\@escaped\n */",
	"/** {@link broken",
	"/* plain */",
	"/**\r\n * CRLF\r\n */",
	"/** @param - missing name\n * @param x missing hyphen */",
	"/** {@customInline a} {@customInline b} {@customInline} */",
	"/** `unclosed code\n * next line` */",
	"/** \\",
	"bare text with @tags and {@link x}",
	"/** ",
}

var configSeeds = []string{
	`{"tagDefinitions":[{"tagName":"@foo","syntaxKind":"modifier"}]}`,
	"// comment\n{\"tagDefinitions\": [{\"tagName\": \"@x\", \"syntaxKind\": \"inline\", \"allowMultiple\": true,},],}",
	`{"supportForTags": {"@param": true}, "noStandardTags": true}`,
	`{"extends": ["./missing.json"]}`,
	`{"tagDefinitions":[{"tagName":"bad","syntaxKind":"what"}]}`,
	"{",
}

func addCommentSeeds(f *testing.F) {
	for _, s := range commentSeeds {
		f.Add([]byte(s))
	}
	f.Add([]byte(tags.StandardDeclarations))
}

func addConfigSeeds(f *testing.F) {
	for _, s := range configSeeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
