package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCareer(t *testing.T) {
	for _, c := range Careers {
		assert.True(t, ValidCareer(c), c)
	}
	assert.False(t, ValidCareer("Gardening"))
	assert.False(t, ValidCareer(""))
	assert.False(t, ValidCareer("web development")) // case matters
}

func TestValidSkill(t *testing.T) {
	assert.True(t, ValidSkill(SkillBeginner))
	assert.True(t, ValidSkill(SkillIntermediate))
	assert.True(t, ValidSkill(SkillAdvanced))
	assert.False(t, ValidSkill("expert"))
}

func TestUserJSONHidesCredentials(t *testing.T) {
	u := User{Name: "John", Email: "john@gmail.com", Password: "hashed", ResetPasswordToken: "tok"}
	b, err := json.Marshal(u)
	assert.NoError(t, err)

	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "john@gmail.com", out["email"])
	assert.NotContains(t, out, "password")
	assert.NotContains(t, out, "resetPasswordToken")
	assert.NotContains(t, out, "resetPasswordExpire")
}
