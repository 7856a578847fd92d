package notion

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	OwnerTypeUser      = "user"
	OwnerTypeWorkspace = "workspace"

	UserTypePerson = "person"
	UserTypeBot    = "bot"

	FileTypeExternal = "external"
	FileTypeHosted   = "file"
)

var (
	// ErrWorkspaceOwner reports a token or bot owned by a workspace rather
	// than a person. Such tokens cannot establish a human identity.
	ErrWorkspaceOwner = errors.New("workspace bots don't have a person")

	// ErrNoPerson reports an owner chain that never reaches a person.
	ErrNoPerson = errors.New("no person reachable from owner")
)

// TokenResponse is the provider's token-endpoint payload. Owner keeps its
// raw JSON so it can be persisted verbatim as an opaque blob.
type TokenResponse struct {
	AccessToken   string `json:"access_token"`
	TokenType     string `json:"token_type"`
	BotID         string `json:"bot_id"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
	WorkspaceIcon string `json:"workspace_icon"`
	Owner         Owner  `json:"owner"`
}

type Owner struct {
	Type string `json:"type"`
	User *User  `json:"user"`

	raw json.RawMessage
}

func (o *Owner) UnmarshalJSON(b []byte) error {
	o.raw = append(o.raw[:0], b...)

	type alias struct {
		Type string `json:"type"`
		User *User  `json:"user"`
	}

	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}

	o.Type = a.Type
	o.User = a.User
	return nil
}

func (o Owner) Raw() string {
	return string(o.raw)
}

// User is the provider's tagged user object: exactly one of Person or Bot
// is set depending on Type.
type User struct {
	Object    string  `json:"object"`
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	AvatarURL string  `json:"avatar_url"`
	Person    *Person `json:"person"`
	Bot       *Bot    `json:"bot"`
}

type Person struct {
	Email string `json:"email"`
}

type Bot struct {
	Owner *Owner `json:"owner"`
}

// maxOwnerDepth bounds the bot-owner chain walk. The provider nests at most
// two levels in practice.
const maxOwnerDepth = 3

// PersonUser resolves the human behind a user object, following a bot's
// owner chain one level at a time.
func PersonUser(u *User) (*User, error) {
	return personUser(u, maxOwnerDepth)
}

func personUser(u *User, depth int) (*User, error) {
	if u == nil || depth == 0 {
		return nil, ErrNoPerson
	}

	switch u.Type {
	case UserTypePerson:
		if u.Person == nil {
			return nil, ErrNoPerson
		}
		return u, nil

	case UserTypeBot:
		if u.Bot == nil || u.Bot.Owner == nil {
			return nil, ErrNoPerson
		}

		if u.Bot.Owner.Type == OwnerTypeWorkspace {
			return nil, ErrWorkspaceOwner
		}

		return personUser(u.Bot.Owner.User, depth-1)

	default:
		return nil, ErrNoPerson
	}
}

// Page carries only the pieces the template gallery needs: property values
// of the files type.
type Page struct {
	Object     string              `json:"object"`
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

type Property struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Files []File `json:"files"`
}

type File struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	External *ExternalFile `json:"external"`
	File     *HostedFile   `json:"file"`
}

type ExternalFile struct {
	URL string `json:"url"`
}

type HostedFile struct {
	URL        string    `json:"url"`
	ExpiryTime time.Time `json:"expiry_time"`
}
