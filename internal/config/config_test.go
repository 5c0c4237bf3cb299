package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProjects(t *testing.T) {
	seeds := parseProjects("pandaspigot:PandaSpigot, waterfall , folia:Folia Server")
	assert.Equal(t, []ProjectSeed{
		{Name: "pandaspigot", FriendlyName: "PandaSpigot"},
		{Name: "waterfall", FriendlyName: "waterfall"},
		{Name: "folia", FriendlyName: "Folia Server"},
	}, seeds)

	assert.Nil(t, parseProjects(""))
	assert.Nil(t, parseProjects(" , "))
}
