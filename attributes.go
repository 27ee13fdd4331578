package jsonapiv

// Attributes starts a keyed validator for a resource's "attributes" member.
// Members without a child validator accept any value. Unknown members raise
// CodeNotRecognised and missing required members raise CodeRequired with
// the attribute name in the detail.
func Attributes() *KeyedBuilder {
	return newKeyedBuilder(KindUnrecognisedAttribute, KindRequiredAttribute).Default(AnyType())
}

// Relationships starts a keyed validator for a resource's "relationships"
// member. Each relationship name gets a HasOne or HasMany child.
func Relationships() *KeyedBuilder {
	return newKeyedBuilder(KindUnrecognisedRelationship, KindRequiredRelationship)
}
