// Package value defines the generic value shapes a view can render.
//
// Value is a closed variant: Null, Bool, Int, Float, String, Sequence,
// Mapping, Object and Unrepresentable. Converters switch over Kind (or the
// concrete types) exhaustively, so adding a shape is a compile-time change.
//
// Arbitrary Go values are lifted with From:
//
//	v := value.From(map[string]any{"a": 1, "b": []string{"x"}})
//	// Mapping{{"a", Int(1)}, {"b", Sequence{String("x")}}}
//
// Ordered mappings are built with MappingBuilder:
//
//	m := value.NewMapping().
//	    SetString("title", "Power").
//	    SetFloat("resolution", 2000).
//	    Build()
package value
