package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProjectAnonymousSeesPublicOnly(t *testing.T) {
	author := uuid.New()
	collection := []testWriting{
		{author: author, public: true, category: "poetry"},
		{author: author, public: false, category: "poetry"},
	}

	got := Project(collection, Anonymous(), Filters{Category: FilterAll, Visibility: FilterAll})

	assert.Len(t, got, 1)
	assert.True(t, got[0].IsPublic())
}

func TestProjectAdminVisibilityFilter(t *testing.T) {
	author := uuid.New()
	admin := Authenticated(uuid.New(), RoleAdmin)
	collection := []testWriting{
		{author: author, public: false, category: "poetry"},
		{author: author, public: true, category: "poetry"},
	}

	got := Project(collection, admin, Filters{Category: "poetry", Visibility: "private"})

	assert.Len(t, got, 1)
	assert.False(t, got[0].IsPublic())
}

func TestProjectVisibilityFilterIgnoredForNonAdmins(t *testing.T) {
	me := uuid.New()
	viewer := Authenticated(me, RoleWriter)
	collection := []testWriting{
		{author: me, public: false, category: "essay"},
		{author: me, public: true, category: "essay"},
	}

	// A non-admin asking for "public" still sees their full allowed scope.
	got := Project(collection, viewer, Filters{Category: FilterAll, Visibility: "public"})
	assert.Len(t, got, 2)
}

func TestProjectCategoryFilter(t *testing.T) {
	author := uuid.New()
	collection := []testWriting{
		{author: author, public: true, category: "poetry"},
		{author: author, public: true, category: "fiction"},
	}

	got := Project(collection, Anonymous(), Filters{Category: "fiction", Visibility: FilterAll})

	assert.Len(t, got, 1)
	assert.Equal(t, "fiction", got[0].CategoryKey())
}

func TestProjectScopeRunsBeforeFilters(t *testing.T) {
	// A filter can never resurface writings the scope removed: a
	// stranger's private poetry stays hidden no matter what filters say.
	owner := uuid.New()
	stranger := Authenticated(uuid.New(), RoleWriter)
	collection := []testWriting{
		{author: owner, public: false, category: "poetry"},
	}

	got := Project(collection, stranger, Filters{Category: "poetry", Visibility: "private"})
	assert.Empty(t, got)
}

func TestProjectEmptyFiltersMeanAll(t *testing.T) {
	author := uuid.New()
	collection := []testWriting{
		{author: author, public: true, category: "other"},
	}

	got := Project(collection, Anonymous(), Filters{})
	assert.Len(t, got, 1)
}
