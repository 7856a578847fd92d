package api

import (
	"encoding/base64"
	"net/http"
)

type oauth2Opt struct {
	token string
}

func OAuth2(prefix, token string) *oauth2Opt {
	return &oauth2Opt{token: prefix + " " + token}
}

func (opt *oauth2Opt) Do(req *http.Request) {
	req.Header.Set("Authorization", opt.token)
}

type basicAuthOpt struct {
	credential string
}

func BasicAuth(username, password string) *basicAuthOpt {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return &basicAuthOpt{credential: "Basic " + encoded}
}

func (opt *basicAuthOpt) Do(req *http.Request) {
	req.Header.Set("Authorization", opt.credential)
}
