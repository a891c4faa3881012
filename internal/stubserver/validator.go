package stubserver

import "github.com/kevgathuku/docue/internal/codec"

// echoValidator lets Echo call c.Validate(req) with the same rules and
// messages the client applies to outbound payloads.
type echoValidator struct{}

func (echoValidator) Validate(i any) error {
	return codec.ValidateInput(i)
}
