package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Comment framing
	CmtInfo             Code = 1000
	CmtMissingClose     Code = 1001
	CmtUnexpectedClose  Code = 1002
	CmtEmptyRange       Code = 1003
	CmtMissingOpenSlash Code = 1004

	// Doc syntax
	DocInfo               Code = 2000
	DocUnsupportedTag     Code = 2001
	DocDuplicateInlineTag Code = 2002
	DocMalformedInlineTag Code = 2003
	DocUnclosedCodeSpan   Code = 2004
	DocMissingParamName   Code = 2005
	DocMissingParamHyphen Code = 2006
	DocMalformedTagName   Code = 2007
	DocTagNotSupported    Code = 2008
	DocTagSyntaxMismatch  Code = 2009
	DocUnescapedBrace     Code = 2010
	DocDuplicateBlock     Code = 2011
	DocBackslashAtEnd     Code = 2012

	// Tag configuration
	CfgInfo               Code = 3000
	CfgReplacedDefinition Code = 3001
	CfgUnknownSyntaxKind  Code = 3002
	CfgInvalidTagName     Code = 3003
	CfgMissingField       Code = 3004
	CfgUnknownSupportTag  Code = 3005
	CfgExtendsCycle       Code = 3006
	CfgExtendsNotFound    Code = 3007
	CfgSyntax             Code = 3008

	// I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	CmtInfo:               "Comment framing information",
	CmtMissingClose:       "Doc comment is missing its closing delimiter",
	CmtUnexpectedClose:    "Unexpected comment closing delimiter",
	CmtEmptyRange:         "Empty comment range",
	CmtMissingOpenSlash:   "Doc comment opener is malformed",
	DocInfo:               "Doc syntax information",
	DocUnsupportedTag:     "Unsupported tag",
	DocDuplicateInlineTag: "Duplicate inline tag",
	DocMalformedInlineTag: "Malformed inline tag",
	DocUnclosedCodeSpan:   "Unclosed code span",
	DocMissingParamName:   "Missing parameter name",
	DocMissingParamHyphen: "Missing hyphen after parameter name",
	DocMalformedTagName:   "Malformed tag name",
	DocTagNotSupported:    "Tag is not enabled by supportForTags",
	DocTagSyntaxMismatch:  "Tag used with the wrong syntax",
	DocUnescapedBrace:     "Unescaped brace",
	DocDuplicateBlock:     "Duplicate block tag",
	DocBackslashAtEnd:     "Backslash at end of comment",
	CfgInfo:               "Configuration information",
	CfgReplacedDefinition: "Tag definition replaced",
	CfgUnknownSyntaxKind:  "Unknown syntax kind",
	CfgInvalidTagName:     "Invalid tag name",
	CfgMissingField:       "Missing required field",
	CfgUnknownSupportTag:  "supportForTags names an undefined tag",
	CfgExtendsCycle:       "Cyclic extends chain",
	CfgExtendsNotFound:    "Extended config file not found",
	CfgSyntax:             "Config file syntax error",
	IOLoadFileError:       "Failed to load file",
	ObsInfo:               "Observability information",
	ObsTimings:            "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CMT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
