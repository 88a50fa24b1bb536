package openai

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"sitecheck/pkg/analysis"
)

type chatMessage struct {
	Role    string
	Content string
}

type chatRequest struct {
	Model    string
	Messages []chatMessage
	// Schema is a raw JSON schema enforced through strict structured outputs.
	Schema string
}

// Encode implements json encoding of chatRequest.
func (r *chatRequest) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("model")
	e.Str(r.Model)
	e.FieldStart("messages")
	e.ArrStart()
	for _, m := range r.Messages {
		e.ObjStart()
		e.FieldStart("role")
		e.Str(m.Role)
		e.FieldStart("content")
		e.Str(m.Content)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("response_format")
	e.ObjStart()
	e.FieldStart("type")
	e.Str("json_schema")
	e.FieldStart("json_schema")
	e.ObjStart()
	e.FieldStart("name")
	e.Str(schemaName)
	e.FieldStart("strict")
	e.Bool(true)
	e.FieldStart("schema")
	e.RawStr(r.Schema)
	e.ObjEnd()
	e.ObjEnd()
	e.ObjEnd()
}

type chatChoice struct {
	FinishReason string
	Content      *string
	Refusal      *string
}

type chatResponse struct {
	Choices          []chatChoice
	PromptTokens     int
	CompletionTokens int
}

// Decode implements json decoding of chatResponse. Fields it does not need
// are skipped.
func (r *chatResponse) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "choices":
			if err := d.Arr(func(d *jx.Decoder) error {
				var c chatChoice
				if err := c.decode(d); err != nil {
					return err
				}
				r.Choices = append(r.Choices, c)

				return nil
			}); err != nil {
				return errors.Wrap(err, "choices")
			}

			return nil
		case "usage":
			if d.Next() == jx.Null {
				return d.Null()
			}

			return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
				var err error
				switch string(key) {
				case "prompt_tokens":
					r.PromptTokens, err = d.Int()
				case "completion_tokens":
					r.CompletionTokens, err = d.Int()
				default:
					err = d.Skip()
				}
				if err != nil {
					return errors.Wrap(err, "usage")
				}

				return nil
			})
		default:
			return d.Skip()
		}
	})
}

func (c *chatChoice) decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "finish_reason":
			if d.Next() == jx.Null {
				return d.Null()
			}
			s, err := d.Str()
			c.FinishReason = s

			return err
		case "message":
			return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
				switch string(key) {
				case "content":
					return decodeNilString(d, &c.Content)
				case "refusal":
					return decodeNilString(d, &c.Refusal)
				default:
					return d.Skip()
				}
			})
		default:
			return d.Skip()
		}
	})
}

func decodeNilString(d *jx.Decoder, dst **string) error {
	if d.Next() == jx.Null {
		*dst = nil

		return d.Null()
	}

	s, err := d.Str()
	if err != nil {
		return err
	}
	*dst = &s

	return nil
}

func encodeNilString(e *jx.Encoder, s *string) {
	if s == nil {
		e.Null()

		return
	}
	e.Str(*s)
}

// encodeInput renders the user message payload, indented for readability.
func encodeInput(in *analysis.Input) string {
	var e jx.Encoder
	e.SetIdent(2)

	e.ObjStart()
	e.FieldStart("url")
	e.Str(in.URL)
	e.FieldStart("domain")
	e.Str(in.Domain)
	e.FieldStart("pageTitle")
	encodeNilString(&e, in.PageTitle)
	e.FieldStart("metaDescription")
	encodeNilString(&e, in.MetaDescription)
	e.FieldStart("pageTextSample")
	e.Str(in.PageTextSample)
	e.FieldStart("fetchedAt")
	e.Str(in.FetchedAt.Format(time.RFC3339Nano))
	e.ObjEnd()

	return e.String()
}
