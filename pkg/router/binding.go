package router

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/memegentino/backend/pkg/xcontext"
)

func decodeQuery(req *http.Request, out any) error {
	values := map[string]string{}
	for key := range req.URL.Query() {
		values[key] = req.URL.Query().Get(key)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}

// bindSessionValues fills string fields tagged `session:"name"` from the
// caller's session. A ",delete" suffix makes the value single-use.
func bindSessionValues(ctx context.Context, req any) error {
	v := reflect.ValueOf(req).Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	var tagged bool
	for i := 0; i < v.NumField(); i++ {
		if _, ok := v.Type().Field(i).Tag.Lookup("session"); ok {
			tagged = true
			break
		}
	}

	if !tagged {
		return nil
	}

	httpReq := xcontext.HTTPRequest(ctx)
	session, err := xcontext.SessionStore(ctx).Get(httpReq)
	if err != nil {
		return err
	}

	var dirty bool
	for i := 0; i < v.NumField(); i++ {
		tag, ok := v.Type().Field(i).Tag.Lookup("session")
		if !ok {
			continue
		}

		name, option, _ := strings.Cut(tag, ",")
		if value, ok := session.Values[name].(string); ok {
			if v.Field(i).Kind() == reflect.String {
				v.Field(i).SetString(value)
			}

			if option == "delete" {
				delete(session.Values, name)
				dirty = true
			}
		}
	}

	if dirty {
		return xcontext.SessionStore(ctx).Save(httpReq, xcontext.HTTPWriter(ctx), session)
	}

	return nil
}
