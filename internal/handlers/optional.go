// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "encoding/json"

// OptionalString distinguishes a JSON field that was absent from one that
// was present, including an explicit null. A plain *string cannot tell
// "omitted" apart from "cleared", which matters for partial updates of
// nullable columns such as a category's description.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records that the field was present before decoding its value.
func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}
