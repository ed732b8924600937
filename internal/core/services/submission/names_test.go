package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/static/errs"
)

func TestExtractArtifactName_Class(t *testing.T) {
	source := "public with sharing class AccountHelper {\n  // ...\n}"
	name, err := ExtractArtifactName(source, domain.ArtifactApexClass)
	require.NoError(t, err)
	assert.Equal(t, "AccountHelper", name)
}

func TestExtractArtifactName_Trigger(t *testing.T) {
	source := "trigger AccountAudit on Account (before insert) { }"
	name, err := ExtractArtifactName(source, domain.ArtifactApexTrigger)
	require.NoError(t, err)
	assert.Equal(t, "AccountAudit", name)
}

func TestExtractArtifactName_CaseInsensitiveKeyword(t *testing.T) {
	name, err := ExtractArtifactName("PUBLIC CLASS Shouty { }", domain.ArtifactApexClass)
	require.NoError(t, err)
	assert.Equal(t, "Shouty", name)
}

func TestExtractArtifactName_FirstDeclarationWins(t *testing.T) {
	source := "public class Outer { class Inner { } }"
	name, err := ExtractArtifactName(source, domain.ArtifactApexClass)
	require.NoError(t, err)
	assert.Equal(t, "Outer", name)
}

func TestExtractArtifactName_Missing(t *testing.T) {
	_, err := ExtractArtifactName("System.debug('hello');", domain.ArtifactApexClass)
	assert.ErrorIs(t, err, errs.MissingArtifactName)

	// A class declaration does not satisfy a trigger lookup.
	_, err = ExtractArtifactName("public class NotATrigger { }", domain.ArtifactApexTrigger)
	assert.ErrorIs(t, err, errs.MissingArtifactName)
}
