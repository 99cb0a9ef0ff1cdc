package jira

type searchResponse struct {
	Issues        []issueDTO `json:"issues"`
	NextPageToken string     `json:"nextPageToken"`
}

type issueDTO struct {
	Key       string        `json:"key"`
	Fields    fieldsDTO     `json:"fields"`
	Changelog *changelogDTO `json:"changelog"`
}

type fieldsDTO struct {
	Summary        string    `json:"summary"`
	Status         namedDTO  `json:"status"`
	IssueType      namedDTO  `json:"issuetype"`
	Updated        string    `json:"updated"`
	ResolutionDate string    `json:"resolutiondate"`
	Assignee       *userDTO  `json:"assignee"`
	Engineer       *userDTO  `json:"Engineer[User Picker (single user)]"`
}

type namedDTO struct {
	Name string `json:"name"`
}

type userDTO struct {
	AccountID    string `json:"accountId"`
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
}

type changelogDTO struct {
	Histories []historyDTO `json:"histories"`
}

type historyDTO struct {
	Created string           `json:"created"`
	Items   []historyItemDTO `json:"items"`
}

type historyItemDTO struct {
	Field      string `json:"field"`
	From       string `json:"from"`
	To         string `json:"to"`
	FromString string `json:"fromString"`
	ToString   string `json:"toString"`
}

type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
