package sweep

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/gridsweep/internal/rules"
)

const plannerSBC = `<Definitions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <Identities>
    <MyObjectBuilder_Identity>
      <IdentityId>100</IdentityId>
      <DisplayName>Alice</DisplayName>
    </MyObjectBuilder_Identity>
  </Identities>
</Definitions>`

const plannerSBS = `<MyObjectBuilder_Sector xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <SectorObjects>
    <MyObjectBuilder_EntityBase xsi:type="MyObjectBuilder_CubeGrid">
      <EntityId>1111</EntityId>
      <DisplayName>Debris</DisplayName>
      <CubeBlocks>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_InteriorLight" />
      </CubeBlocks>
    </MyObjectBuilder_EntityBase>
    <MyObjectBuilder_EntityBase xsi:type="MyObjectBuilder_CubeGrid">
      <EntityId>2222</EntityId>
      <DisplayName>Alice Base</DisplayName>
      <CubeBlocks>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Beacon">
          <Owner>100</Owner>
          <CustomName>Keep me</CustomName>
        </MyObjectBuilder_CubeBlock>
      </CubeBlocks>
    </MyObjectBuilder_EntityBase>
  </SectorObjects>
</MyObjectBuilder_Sector>`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testPlanner(t *testing.T) *Planner {
	t.Helper()
	engine, err := rules.NewEngine(rules.DefaultRuleset())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPlanner(engine, logger, nil)
}

func TestPlan(t *testing.T) {
	sbc := writeFixture(t, "Sandbox.sbc", plannerSBC)
	sbs := writeFixture(t, "SANDBOX_0_0_0_.sbs", plannerSBS)

	plan, err := testPlanner(t).Plan(sbc, sbs, rules.Options{Trash: true}, func(string) bool { return true })
	require.NoError(t, err)

	require.Len(t, plan.Grids, 2)
	require.Len(t, plan.Delete, 1)
	assert.Equal(t, int64(1111), plan.Delete[0].ID)
	assert.Equal(t, []string{rules.ReasonTrash}, plan.Delete[0].DeletionReasons)
	assert.Equal(t, []int64{1111}, plan.DeleteIDs())
	assert.False(t, plan.Empty())
}

func TestPlan_MissingWorldFileIsFatal(t *testing.T) {
	sbc := writeFixture(t, "Sandbox.sbc", plannerSBC)

	_, err := testPlanner(t).Plan(sbc, filepath.Join(t.TempDir(), "missing.sbs"), rules.Options{}, func(string) bool { return true })
	require.Error(t, err)
}

func TestPlan_DoesNotTouchInputs(t *testing.T) {
	sbc := writeFixture(t, "Sandbox.sbc", plannerSBC)
	sbs := writeFixture(t, "SANDBOX_0_0_0_.sbs", plannerSBS)

	_, err := testPlanner(t).Plan(sbc, sbs, rules.Options{Trash: true, RespawnShips: true, OwnerRules: true}, func(string) bool { return false })
	require.NoError(t, err)

	got, err := os.ReadFile(sbs)
	require.NoError(t, err)
	assert.Equal(t, plannerSBS, string(got))
}
