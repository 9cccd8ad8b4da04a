package oauth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/camly/cli/config"
	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/system"
	"github.com/camly/cli/models"
	"github.com/grokify/go-pkce"
	"github.com/lucsky/cuid"
	"github.com/urfave/cli/v2"
)

// Log in via the browser using Auth0 with PKCE, then exchange the access
// token for a Camly session.
func LogIn(c *cli.Context) error {
	// Open login link in browser
	port := 4242
	codeVerifier, err := pkce.NewCodeVerifierWithLength(32)
	if err != nil {
		log.Fatalf("failed to generate code verifier: %v", err)
	}
	codeChallenge := pkce.CodeChallengeS256(codeVerifier)
	serverState := cuid.New()
	cliLocalhost := fmt.Sprintf("http://localhost:%d", port)
	scope := url.QueryEscape("offline_access openid profile email")
	authUrl := constants.Auth0Domain + "/authorize?" +
		"response_type=code" +
		"&code_challenge_method=S256" +
		"&code_challenge=" + codeChallenge +
		"&client_id=" + constants.Auth0ClientID +
		"&audience=" + url.QueryEscape(config.I.API.Host) +
		"&redirect_uri=" + cliLocalhost +
		"&state=" + serverState +
		"&scope=" + scope

	console.Info("Opening browser to log in...")
	console.Info("You can also open this URL:")
	fmt.Println(authUrl)
	system.OpenBrowser(authUrl)

	// Start local HTTP server for receiving authentication callback requests
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		console.Verbose("Received authentication callback request. Validating...")

		code := r.URL.Query().Get("code")
		clientState := r.URL.Query().Get("state")
		resError := r.URL.Query().Get("error")
		resErrorDesc := r.URL.Query().Get("error_description")

		if clientState != serverState {
			console.Verbose("Client state does not match server state")
			console.Verbose("Client state: %s", clientState)
			console.Verbose("Server state: %s", serverState)
			log.Fatal("auth state check failed")
		}

		if resError != "" {
			log.Fatalf(
				"Received error from authentication callback: %s; %s",
				resError,
				resErrorDesc,
			)
		}

		// Validate code
		tokenReqUrl := fmt.Sprintf("%s/oauth/token", constants.Auth0Domain)
		tokenReqData := url.Values{}
		tokenReqData.Set("grant_type", "authorization_code")
		tokenReqData.Set("client_id", constants.Auth0ClientID)
		tokenReqData.Set("code_verifier", codeVerifier)
		tokenReqData.Set("code", code)
		tokenReqData.Set("redirect_uri", cliLocalhost)
		tokenRes, err := http.Post(
			tokenReqUrl,
			"application/x-www-form-urlencoded",
			strings.NewReader(tokenReqData.Encode()),
		)
		if err != nil {
			log.Fatalf("error while retrieving access token: %v", err)
		}

		if tokenRes.StatusCode != 200 {
			// Parse response body
			var body map[string]interface{}
			_ = json.NewDecoder(tokenRes.Body).Decode(&body)

			errorDesc := body["error_description"]
			log.Fatalf("received HTTP status %d while retrieving access token: %s", tokenRes.StatusCode, errorDesc)
		}

		// Parse response
		tokenData, err := ParseAccessTokenResponse(tokenRes)
		if err != nil {
			log.Fatalf("error while parsing access token response: %v", err)
		}

		// Exchange the access token for a Camly session
		session, err := authenticate(tokenData.AccessToken)
		if err != nil {
			log.Fatalf("error while creating session: %v", err)
		}

		console.Verbose("Session token: %s", session.SessionToken)
		console.Verbose("User ID: %s", session.UserID)

		config.I.Auth.SessionToken = session.SessionToken
		config.I.Auth.UserID = session.UserID
		if err = config.Save(config.I); err != nil {
			log.Fatalf("error while writing config: %v", err)
		}

		console.Success("Authenticated")
		os.Exit(0)
	})
	go http.ListenAndServe(fmt.Sprintf(":%d", port), nil)

	// Timeout after 3 minutes
	time.Sleep(time.Second * 180)
	return errors.New("ending authentication attempt after 3 minutes")
}

// Exchange an Auth0 access token for a Camly session token.
func authenticate(accessToken string) (models.AuthenticateResponse, error) {
	bodyJson, _ := json.Marshal(models.AuthenticateRequest{
		Token:     accessToken,
		TokenType: "access_token",
	})
	res, err := http.Post(
		config.I.API.Host+"/auth/authenticate",
		"application/json",
		bytes.NewBuffer(bodyJson),
	)
	if err != nil {
		return models.AuthenticateResponse{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return models.AuthenticateResponse{}, fmt.Errorf("received HTTP status %d from authenticate route", res.StatusCode)
	}

	var session models.AuthenticateResponse
	err = json.NewDecoder(res.Body).Decode(&session)
	if err != nil {
		return models.AuthenticateResponse{}, err
	}

	if session.SessionToken == "" {
		return models.AuthenticateResponse{}, errors.New("no session token included in authenticate response")
	}

	return session, nil
}
