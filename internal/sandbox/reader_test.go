package sandbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definitionsDoc = `<?xml version="1.0"?>
<Definitions xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <Identities>
    <MyObjectBuilder_Identity>
      <IdentityId>100</IdentityId>
      <DisplayName>Alice</DisplayName>
    </MyObjectBuilder_Identity>
    <MyObjectBuilder_Identity>
      <IdentityId>200</IdentityId>
      <DisplayName>Bob</DisplayName>
    </MyObjectBuilder_Identity>
  </Identities>
</Definitions>`

const worldDoc = `<?xml version="1.0"?>
<MyObjectBuilder_Sector xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <SectorObjects>
    <MyObjectBuilder_EntityBase xsi:type="MyObjectBuilder_CubeGrid">
      <EntityId>1111</EntityId>
      <DisplayName>Base One</DisplayName>
      <CubeBlocks>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Beacon">
          <Owner>100</Owner>
          <CustomName>Home Beacon</CustomName>
        </MyObjectBuilder_CubeBlock>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_BatteryBlock">
          <Owner>100</Owner>
          <CurrentStoredPower>2.5</CurrentStoredPower>
        </MyObjectBuilder_CubeBlock>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_BatteryBlock">
          <Owner>200</Owner>
          <CurrentStoredPower>0.5</CurrentStoredPower>
        </MyObjectBuilder_CubeBlock>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Reactor">
          <Owner>100</Owner>
          <Inventory>
            <Items>
              <MyObjectBuilder_InventoryItem>
                <Amount>12.5</Amount>
              </MyObjectBuilder_InventoryItem>
              <MyObjectBuilder_InventoryItem>
                <Amount>7.5</Amount>
              </MyObjectBuilder_InventoryItem>
            </Items>
          </Inventory>
        </MyObjectBuilder_CubeBlock>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_TimerBlock">
          <Enabled>true</Enabled>
        </MyObjectBuilder_CubeBlock>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_TimerBlock">
          <Enabled>false</Enabled>
        </MyObjectBuilder_CubeBlock>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Projector">
          <ProjectedGrid>
            <CubeBlocks>
              <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Wheel" />
              <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Wheel" />
            </CubeBlocks>
          </ProjectedGrid>
        </MyObjectBuilder_CubeBlock>
      </CubeBlocks>
    </MyObjectBuilder_EntityBase>
    <MyObjectBuilder_EntityBase xsi:type="MyObjectBuilder_VoxelMap">
      <EntityId>5555</EntityId>
    </MyObjectBuilder_EntityBase>
    <MyObjectBuilder_EntityBase xsi:type="MyObjectBuilder_CubeGrid">
      <EntityId>2222</EntityId>
      <DisplayName>Small Grid 42</DisplayName>
      <CubeBlocks>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Wheel" />
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Wheel" />
      </CubeBlocks>
    </MyObjectBuilder_EntityBase>
  </SectorObjects>
</MyObjectBuilder_Sector>`

func TestReadDefinitions(t *testing.T) {
	names, err := ReadDefinitions(strings.NewReader(definitionsDoc))
	require.NoError(t, err)

	assert.Equal(t, map[int64]string{100: "Alice", 200: "Bob"}, names)
}

func TestReadDefinitions_MalformedIsFatal(t *testing.T) {
	_, err := ReadDefinitions(strings.NewReader("<Definitions><Identities></Definitions>"))
	require.Error(t, err)
}

func TestReadWorld(t *testing.T) {
	names := map[int64]string{100: "Alice", 200: "Bob"}

	grids, err := ReadWorld(strings.NewReader(worldDoc), names)
	require.NoError(t, err)
	require.Len(t, grids, 2, "non-grid entities must be skipped")

	base := grids[0]
	assert.Equal(t, int64(1111), base.ID)
	assert.Equal(t, "Base One", base.Name)
	assert.Equal(t, 7, base.BlockCount)
	assert.Equal(t, 1, base.BeaconCount)
	assert.Equal(t, []string{"Home Beacon"}, base.CustomBeaconNames)
	assert.Equal(t, 2, base.BatteryCount)
	assert.InDelta(t, 3.0, base.StoredPower, 1e-9)
	assert.Equal(t, 1, base.ReactorCount)
	assert.InDelta(t, 20.0, base.ReactorUranium, 1e-9)
	assert.Equal(t, 1, base.ProjectorCount)
	assert.Equal(t, 2, base.ProjectedBlocks)
	assert.Equal(t, 2, base.TimerCount)
	assert.Equal(t, 1, base.EnabledTimerCount)

	// Owners deduplicated in first-seen order, names in lockstep.
	assert.Equal(t, []int64{100, 200}, base.OwnerIDs)
	assert.Equal(t, []string{"Alice", "Bob"}, base.OwnerNames)

	// Block types distinct and sorted.
	assert.Equal(t, []string{
		"MyObjectBuilder_BatteryBlock",
		"MyObjectBuilder_Beacon",
		"MyObjectBuilder_Projector",
		"MyObjectBuilder_Reactor",
		"MyObjectBuilder_TimerBlock",
	}, base.BlockTypes)

	small := grids[1]
	assert.Equal(t, int64(2222), small.ID)
	assert.Equal(t, "Small Grid 42", small.Name)
	assert.Equal(t, 2, small.BlockCount)
	assert.Empty(t, small.OwnerIDs)
	assert.Equal(t, []string{"MyObjectBuilder_Wheel"}, small.BlockTypes)
}

func TestReadWorld_UnknownOwnerIsFatal(t *testing.T) {
	_, err := ReadWorld(strings.NewReader(worldDoc), map[int64]string{100: "Alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner identity 200")
}

func TestReadWorld_MissingOptionalNumericIsZero(t *testing.T) {
	doc := `<Sector xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <SectorObjects>
    <MyObjectBuilder_EntityBase xsi:type="MyObjectBuilder_CubeGrid">
      <EntityId>1</EntityId>
      <DisplayName>G</DisplayName>
      <CubeBlocks>
        <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_BatteryBlock" />
      </CubeBlocks>
    </MyObjectBuilder_EntityBase>
  </SectorObjects>
</Sector>`

	grids, err := ReadWorld(strings.NewReader(doc), nil)
	require.NoError(t, err)
	require.Len(t, grids, 1)
	assert.Zero(t, grids[0].StoredPower)
	assert.Equal(t, 1, grids[0].BatteryCount)
}

func TestNodePath(t *testing.T) {
	root, err := parseTree(strings.NewReader("<A><B><C>x</C><C>y</C></B><B><C>z</C></B></A>"))
	require.NoError(t, err)

	nodes := root.Path("B", "C")
	require.Len(t, nodes, 3)
	assert.Equal(t, "x", nodes[0].Text)
	assert.Equal(t, "z", nodes[2].Text)
}
