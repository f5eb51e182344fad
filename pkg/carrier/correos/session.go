package correos

import "context"

// withSession dials one picking session, runs fn against it and guarantees
// the session is released on every exit path.
func withSession(ctx context.Context, dialer Dialer, cfg SessionConfig, fn func(api PickingAPI) error) (err error) {
	api, err := dialer.Dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := api.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(api)
}
