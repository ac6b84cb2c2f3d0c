package syntax

// TagKind is the kind of a tag emitted by the grammar.
type TagKind int

// Tag marks a position in the source text with a kind.  Tags are the only
// output of the parser: there is no syntax tree.
type Tag struct {
	Pos  int
	Kind TagKind
}

// Enumeration of tag kinds.
const (
	// Structural kinds.  Each is closed by its paired `_End` kind.
	TagInclude TagKind = iota
	TagIncludeEnd
	TagFunc
	TagFuncEnd
	TagStruct
	TagStructEnd
	TagUnion
	TagUnionEnd
	TagTrait
	TagTraitEnd
	TagImplement
	TagImplementEnd
	TagBlock
	TagBlockEnd
	TagIf
	TagIfEnd
	TagWhile
	TagWhileEnd
	TagTry
	TagTryEnd
	TagSpawn
	TagSpawnEnd
	TagArray
	TagArrayEnd
	TagCall
	TagCallEnd
	TagGenCall
	TagGenCallEnd
	TagReturn
	TagReturnEnd
	TagString
	TagStringEnd
	TagNumber
	TagNumberEnd

	// Leaf-start kinds.  Each is placed directly before an identifier and is
	// closed by `TagIdentEnd`.
	TagFuncName
	TagTypeName
	TagFieldName
	TagAttr
	TagArgName
	TagIdent
	TagField
	TagVar
	TagCatch
	TagIdentEnd

	// Markers.  These have no closing tag.
	TagAssign
	TagVarType
	TagPred
	TagElseIf
	TagElse
	TagTypeBody
	TagTraitBody
	TagImplBody

	// TagEOF is returned by a walker which has consumed all tags.
	TagEOF
)

var tagNames = [...]string{
	TagInclude:      "include",
	TagIncludeEnd:   "include_end",
	TagFunc:         "func",
	TagFuncEnd:      "func_end",
	TagStruct:       "struct",
	TagStructEnd:    "struct_end",
	TagUnion:        "union",
	TagUnionEnd:     "union_end",
	TagTrait:        "trait",
	TagTraitEnd:     "trait_end",
	TagImplement:    "implement",
	TagImplementEnd: "implement_end",
	TagBlock:        "block",
	TagBlockEnd:     "block_end",
	TagIf:           "if",
	TagIfEnd:        "if_end",
	TagWhile:        "while",
	TagWhileEnd:     "while_end",
	TagTry:          "try",
	TagTryEnd:       "try_end",
	TagSpawn:        "spawn",
	TagSpawnEnd:     "spawn_end",
	TagArray:        "array",
	TagArrayEnd:     "array_end",
	TagCall:         "call",
	TagCallEnd:      "call_end",
	TagGenCall:      "gencall",
	TagGenCallEnd:   "gencall_end",
	TagReturn:       "return",
	TagReturnEnd:    "return_end",
	TagString:       "string",
	TagStringEnd:    "string_end",
	TagNumber:       "number",
	TagNumberEnd:    "number_end",
	TagFuncName:     "func_name",
	TagTypeName:     "type_name",
	TagFieldName:    "field_name",
	TagAttr:         "attr",
	TagArgName:      "arg_name",
	TagIdent:        "ident",
	TagField:        "field",
	TagVar:          "var",
	TagCatch:        "catch",
	TagIdentEnd:     "ident_end",
	TagAssign:       "assign",
	TagVarType:      "var_type",
	TagPred:         "pred",
	TagElseIf:       "elseif",
	TagElse:         "else",
	TagTypeBody:     "type_body",
	TagTraitBody:    "trait_body",
	TagImplBody:     "impl_body",
	TagEOF:          "eof",
}

func (k TagKind) String() string {
	if int(k) < len(tagNames) {
		return tagNames[k]
	}

	return "unknown"
}

// IsStructural reports whether the kind opens a bracketed range.
func (k TagKind) IsStructural() bool {
	return k <= TagNumberEnd && (k-TagInclude)%2 == 0
}

// IsStructuralEnd reports whether the kind closes a bracketed range.
func (k TagKind) IsStructuralEnd() bool {
	return k <= TagNumberEnd && (k-TagInclude)%2 == 1
}

// IsLeafStart reports whether the kind marks the start of an identifier.
func (k TagKind) IsLeafStart() bool {
	return TagFuncName <= k && k < TagIdentEnd
}

// End returns the closing kind of a structural or leaf-start kind.
func (k TagKind) End() TagKind {
	if k.IsStructural() {
		return k + 1
	}

	return TagIdentEnd
}
