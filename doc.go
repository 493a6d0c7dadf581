// Package gambit is a client SDK for the Gambit Tools API. Every call is a
// signed JSON POST executed asynchronously on a shared worker pool:
//
//   - HMAC-SHA256 request signing (Sign)
//   - One fixed execution algorithm for every endpoint (Request)
//   - A uniform success / error envelope on every answer (Response)
//   - A Service owning the pool and the endpoint hostname, returning a Future
//     per submission
//   - Prometheus metrics and lightweight structured debug logging
//
// Typical usage:
//
//	svc := gambit.New(gambit.WithEndpointHostname("api.example.com"))
//	defer svc.Shutdown()
//
//	fut := svc.SubmitRandomUUID(&gambit.RandomUUIDBuilder{
//	    AccessKey: accessKey,
//	    SecretKey: secretKey,
//	})
//	resp, err := fut.Wait(ctx)
//	if err != nil {
//	    // the server was never reached (bad config, DNS, bad key, shut down)
//	}
//	if !resp.IsSuccess() {
//	    // the server answered "no": inspect resp.ErrorCode() / resp.ErrorDetails()
//	}
//	fmt.Println(resp.UUID())
//
// Two failure classes are kept apart. Anything that prevents the
// SDK from obtaining a server payload rejects the Future with a *ClientError.
// Anything the server did answer is folded into the Response, so callers must
// always check IsSuccess before reading typed fields.
//
// Submitted requests cannot be cancelled and carry no timeout beyond the one
// configured on the underlying http.Client (WithTimeout). The context passed
// to Future.Wait only bounds how long the caller waits.
package gambit
