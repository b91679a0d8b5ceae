//go:build !functional

package petrel

import (
	"errors"
	"testing"

	"github.com/rcrowley/go-metrics"
)

var (
	emptyMetadataResponseV0 = []byte{
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}

	brokersNoTopicsMetadataResponseV0 = []byte{
		0x00, 0x00, 0x00, 0x02,

		0x00, 0x00, 0xab, 0xff,
		0x00, 0x09, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't',
		0x00, 0x00, 0x00, 0x33,

		0x00, 0x01, 0x02, 0x03,
		0x00, 0x0a, 'g', 'o', 'o', 'g', 'l', 'e', '.', 'c', 'o', 'm',
		0x00, 0x00, 0x01, 0x11,

		0x00, 0x00, 0x00, 0x00,
	}

	topicsNoBrokersMetadataResponseV0 = []byte{
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x02,

		0x00, 0x00,
		0x00, 0x03, 'f', 'o', 'o',
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x04,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x07,
		0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x00,

		0x00, 0x00,
		0x00, 0x03, 'b', 'a', 'r',
		0x00, 0x00, 0x00, 0x00,
	}

	brokersNoTopicsMetadataResponseV1 = []byte{
		0x00, 0x00, 0x00, 0x02,

		0x00, 0x00, 0xab, 0xff,
		0x00, 0x09, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't',
		0x00, 0x00, 0x00, 0x33,
		0x00, 0x05, 'r', 'a', 'c', 'k', '0',

		0x00, 0x01, 0x02, 0x03,
		0x00, 0x0a, 'g', 'o', 'o', 'g', 'l', 'e', '.', 'c', 'o', 'm',
		0x00, 0x00, 0x01, 0x11,
		0x00, 0x05, 'r', 'a', 'c', 'k', '1',

		0x00, 0x00, 0x00, 0x01,

		0x00, 0x00, 0x00, 0x00,
	}

	topicsNoBrokersMetadataResponseV1 = []byte{
		0x00, 0x00, 0x00, 0x00,

		0x00, 0x00, 0x00, 0x04,

		0x00, 0x00, 0x00, 0x02,

		0x00, 0x00,
		0x00, 0x03, 'f', 'o', 'o',
		0x00,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x04,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x07,
		0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x00,

		0x00, 0x00,
		0x00, 0x03, 'b', 'a', 'r',
		0x01,
		0x00, 0x00, 0x00, 0x00,
	}

	noBrokersNoTopicsWithThrottleTimeAndClusterIDV3 = []byte{
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x09, 'c', 'l', 'u', 's', 't', 'e', 'r', 'I', 'd',
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
	}

	noBrokersOneTopicWithOfflineReplicasV5 = []byte{
		0x00, 0x00, 0x00, 0x05,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x09, 'c', 'l', 'u', 's', 't', 'e', 'r', 'I', 'd',
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00,
		0x00, 0x03, 'f', 'o', 'o',
		0x00,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x04,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x07,
		0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x03,
	}

	oneTopicMetadataResponseV6 = []byte{
		0x00, 0x00, 0x00, 0x07, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 'h', 'o', 's',
		't', 0x00, 0x00, 0x23, 0x84, 0xff, 0xff, 0x00, 0x09, 'c', 'l', 'u', 's', 't', 'e', 'r',
		'I', 'd', 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x04, 't', 'o',
		'n', 'y', 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x00,
	}

	oneTopicMetadataResponseV7 = []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 'h', 'o', 's',
		't', 0x00, 0x00, 0x23, 0x84, 0xff, 0xff, 0x00, 0x09, 'c', 'l', 'u', 's', 't', 'e', 'r',
		'I', 'd', 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x04, 't', 'o',
		'n', 'y', 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x7b, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00,
	}

	oneTopicMetadataResponseV8 = []byte{
		0x00, 0x00, 0x00, 0x00, // throttle ms
		0x00, 0x00, 0x00, 0x01, // length brokers
		0x00, 0x00, 0x00, 0x00, // broker[0].nodeid
		0x00, 0x04, // brokers[0].length(nodehost)
		'h', 'o', 's', 't', // broker[0].nodehost
		0x00, 0x00, 0x23, 0x84, // broker[0].port (9092)
		0xff, 0xff, // brokers[0].rack (null)
		0x00, 0x09, 'c', 'l', 'u', 's', 't', 'e', 'r',
		'I', 'd', 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x04, 't', 'o',
		'n', 'y', 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x7b, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 'Y', 0x00, 0x00, 0x00,
		0xea,
	}
)

func TestEmptyMetadataResponseV0(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "empty, V0", &response, emptyMetadataResponseV0, 0)
	if len(response.Brokers) != 0 {
		t.Error("Decoding produced", len(response.Brokers), "brokers where there were none!")
	}
	if len(response.Topics) != 0 {
		t.Error("Decoding produced", len(response.Topics), "topics where there were none!")
	}
}

func TestMetadataResponseWithBrokersV0(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "brokers, no topics, V0", &response, brokersNoTopicsMetadataResponseV0, 0)
	if len(response.Brokers) != 2 {
		t.Fatal("Decoding produced", len(response.Brokers), "brokers where there were two!")
	}

	if response.Brokers[0].ID != 0xabff {
		t.Error("Decoding produced invalid broker 0 id.")
	}
	if response.Brokers[0].Addr() != "localhost:51" {
		t.Error("Decoding produced invalid broker 0 address.")
	}
	if response.Brokers[1].ID != 0x010203 {
		t.Error("Decoding produced invalid broker 1 id.")
	}
	if response.Brokers[1].Addr() != "google.com:273" {
		t.Error("Decoding produced invalid broker 1 address.")
	}

	if len(response.Topics) != 0 {
		t.Error("Decoding produced", len(response.Topics), "topics where there were none!")
	}
}

func TestMetadataResponseWithTopicsV0(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "topics, no brokers, V0", &response, topicsNoBrokersMetadataResponseV0, 0)
	if len(response.Brokers) != 0 {
		t.Error("Decoding produced", len(response.Brokers), "brokers where there were none!")
	}

	if len(response.Topics) != 2 {
		t.Fatal("Decoding produced", len(response.Topics), "topics where there were two!")
	}

	if !errors.Is(response.Topics[0].Err, ErrNoError) {
		t.Error("Decoding produced invalid topic 0 error.")
	}

	if response.Topics[0].Name != "foo" {
		t.Error("Decoding produced invalid topic 0 name.")
	}

	if len(response.Topics[0].Partitions) != 1 {
		t.Fatal("Decoding produced invalid partition count for topic 0.")
	}

	if !errors.Is(response.Topics[0].Partitions[0].Err, ErrInvalidMessageSize) {
		t.Error("Decoding produced invalid topic 0 partition 0 error.")
	}

	if response.Topics[0].Partitions[0].ID != 0x01 {
		t.Error("Decoding produced invalid topic 0 partition 0 id.")
	}

	if response.Topics[0].Partitions[0].Leader != 0x07 {
		t.Error("Decoding produced invalid topic 0 partition 0 leader.")
	}

	if len(response.Topics[0].Partitions[0].Replicas) != 3 {
		t.Fatal("Decoding produced invalid topic 0 partition 0 replicas.")
	}
	for i := 0; i < 3; i++ {
		if response.Topics[0].Partitions[0].Replicas[i] != int32(i+1) {
			t.Error("Decoding produced invalid topic 0 partition 0 replica", i)
		}
	}

	if len(response.Topics[0].Partitions[0].Isr) != 0 {
		t.Error("Decoding produced invalid topic 0 partition 0 isr length.")
	}

	if !errors.Is(response.Topics[1].Err, ErrNoError) {
		t.Error("Decoding produced invalid topic 1 error.")
	}

	if response.Topics[1].Name != "bar" {
		t.Error("Decoding produced invalid topic 0 name.")
	}

	if len(response.Topics[1].Partitions) != 0 {
		t.Error("Decoding produced invalid partition count for topic 1.")
	}
}

func TestMetadataResponseWithBrokersV1(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "topics, V1", &response, brokersNoTopicsMetadataResponseV1, 1)
	if len(response.Brokers) != 2 {
		t.Error("Decoding produced", len(response.Brokers), "brokers where there were 2!")
	}
	if response.Brokers[0].Rack == nil || *response.Brokers[0].Rack != "rack0" {
		t.Error("Decoding produced invalid broker 0 rack.")
	}
	if response.Brokers[1].Rack == nil || *response.Brokers[1].Rack != "rack1" {
		t.Error("Decoding produced invalid broker 1 rack.")
	}
	if response.ControllerID != 1 {
		t.Error("Decoding produced", response.ControllerID, "should have been 1!")
	}
	if len(response.Topics) != 0 {
		t.Error("Decoding produced", len(response.Brokers), "brokers where there were none!")
	}
}

func TestMetadataResponseWithTopicsV1(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "topics, V1", &response, topicsNoBrokersMetadataResponseV1, 1)
	if len(response.Brokers) != 0 {
		t.Error("Decoding produced", len(response.Brokers), "brokers where there were none!")
	}
	if response.ControllerID != 4 {
		t.Error("Decoding produced", response.ControllerID, "should have been 4!")
	}
	if len(response.Topics) != 2 {
		t.Error("Decoding produced", len(response.Topics), "topics where there were 2!")
	}
	if response.Topics[0].IsInternal {
		t.Error("Decoding produced", response.Topics[0], "topic0 should have been false!")
	}
	if !response.Topics[1].IsInternal {
		t.Error("Decoding produced", response.Topics[1], "topic1 should have been true!")
	}
}

func TestMetadataResponseWithThrottleTime(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "no topics, no brokers, throttle time and cluster Id V3", &response, noBrokersNoTopicsWithThrottleTimeAndClusterIDV3, 3)
	if response.ThrottleTimeMs != int32(16) {
		t.Error("Decoding produced", response.ThrottleTimeMs, "should have been 16!")
	}
	if len(response.Brokers) != 0 {
		t.Error("Decoding produced", response.Brokers, "should have been 0!")
	}
	if response.ControllerID != int32(1) {
		t.Error("Decoding produced", response.ControllerID, "should have been 1!")
	}
	if *response.ClusterID != "clusterId" {
		t.Error("Decoding produced", response.ClusterID, "should have been clusterId!")
	}
	if len(response.Topics) != 0 {
		t.Error("Decoding produced", len(response.Topics), "should have been 0!")
	}
}

func TestMetadataResponseWithOfflineReplicasV5(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "no brokers, 1 topic with offline replica V5", &response, noBrokersOneTopicWithOfflineReplicasV5, 5)
	if response.ThrottleTimeMs != int32(5) {
		t.Error("Decoding produced", response.ThrottleTimeMs, "should have been 5!")
	}
	if len(response.Brokers) != 0 {
		t.Error("Decoding produced", response.Brokers, "should have been 0!")
	}
	if response.ControllerID != int32(2) {
		t.Error("Decoding produced", response.ControllerID, "should have been 2!")
	}
	if *response.ClusterID != "clusterId" {
		t.Error("Decoding produced", response.ClusterID, "should have been clusterId!")
	}
	if len(response.Topics) != 1 {
		t.Error("Decoding produced", len(response.Topics), "should have been 1!")
	}
	if len(response.Topics[0].Partitions[0].OfflineReplicas) != 1 {
		t.Error("Decoding produced", len(response.Topics[0].Partitions[0].OfflineReplicas), "should have been 1!")
	}
}

func TestMetadataResponseV6(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "one topic V6", &response, oneTopicMetadataResponseV6, 6)
	if response.ThrottleTimeMs != int32(7) {
		t.Error("Decoding produced", response.ThrottleTimeMs, "should have been 7!")
	}
	if len(response.Brokers) != 1 {
		t.Error("Decoding produced", response.Brokers, "should have been 1!")
	}
	if response.Brokers[0].Addr() != "host:9092" {
		t.Error("Decoding produced", response.Brokers[0].Addr(), "should have been host:9092!")
	}
	if response.ControllerID != int32(1) {
		t.Error("Decoding produced", response.ControllerID, "should have been 1!")
	}
	if *response.ClusterID != "clusterId" {
		t.Error("Decoding produced", response.ClusterID, "should have been clusterId!")
	}
	if len(response.Topics) != 1 {
		t.Error("Decoding produced", len(response.Topics), "should have been 1!")
	}
	if len(response.Topics[0].Partitions[0].OfflineReplicas) != 0 {
		t.Error("Decoding produced", len(response.Topics[0].Partitions[0].OfflineReplicas), "should have been 0!")
	}
}

func TestMetadataResponseV7(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "one topic V7", &response, oneTopicMetadataResponseV7, 7)
	if response.ThrottleTimeMs != int32(0) {
		t.Error("Decoding produced", response.ThrottleTimeMs, "should have been 0!")
	}
	if len(response.Brokers) != 1 {
		t.Error("Decoding produced", response.Brokers, "should have been 1!")
	}
	if response.Brokers[0].Addr() != "host:9092" {
		t.Error("Decoding produced", response.Brokers[0].Addr(), "should have been host:9092!")
	}
	if response.ControllerID != int32(1) {
		t.Error("Decoding produced", response.ControllerID, "should have been 1!")
	}
	if *response.ClusterID != "clusterId" {
		t.Error("Decoding produced", response.ClusterID, "should have been clusterId!")
	}
	if len(response.Topics) != 1 {
		t.Error("Decoding produced", len(response.Topics), "should have been 1!")
	}
	if len(response.Topics[0].Partitions[0].OfflineReplicas) != 0 {
		t.Error("Decoding produced", len(response.Topics[0].Partitions[0].OfflineReplicas), "should have been 0!")
	}
	if response.Topics[0].Partitions[0].LeaderEpoch != 123 {
		t.Error("Decoding produced", response.Topics[0].Partitions[0].LeaderEpoch, "should have been 123!")
	}
}

func TestMetadataResponseV8(t *testing.T) {
	response := MetadataResponse{}

	testVersionDecodable(t, "one topic V8", &response, oneTopicMetadataResponseV8, 8)
	if response.ThrottleTimeMs != int32(0) {
		t.Error("Decoding produced", response.ThrottleTimeMs, "should have been 0!")
	}
	if len(response.Brokers) != 1 {
		t.Error("Decoding produced", response.Brokers, "should have been 1!")
	}
	if response.Brokers[0].Addr() != "host:9092" {
		t.Error("Decoding produced", response.Brokers[0].Addr(), "should have been host:9092!")
	}
	if response.ControllerID != int32(1) {
		t.Error("Decoding produced", response.ControllerID, "should have been 1!")
	}
	if *response.ClusterID != "clusterId" {
		t.Error("Decoding produced", response.ClusterID, "should have been clusterId!")
	}
	if response.ClusterAuthorizedOperations != 234 {
		t.Error("Decoding produced", response.ClusterAuthorizedOperations, "should have been 234!")
	}
	if len(response.Topics) != 1 {
		t.Error("Decoding produced", len(response.Topics), "should have been 1!")
	}
	if response.Topics[0].TopicAuthorizedOperations != 345 {
		t.Error("Decoding produced", response.Topics[0].TopicAuthorizedOperations, "should have been 345!")
	}
	if len(response.Topics[0].Partitions[0].OfflineReplicas) != 0 {
		t.Error("Decoding produced", len(response.Topics[0].Partitions[0].OfflineReplicas), "should have been 0!")
	}
	if response.Topics[0].Partitions[0].LeaderEpoch != 123 {
		t.Error("Decoding produced", response.Topics[0].Partitions[0].LeaderEpoch, "should have been 123!")
	}
}

func TestMetadataResponseRoundTripV8(t *testing.T) {
	response := &MetadataResponse{
		Version:      8,
		Brokers:      []*Broker{{ID: 0, Host: "host", Port: 9092}},
		ClusterID:    nullString("clusterId"),
		ControllerID: 1,
		Topics: []*TopicMetadata{{
			Name: "tony",
			Partitions: []*PartitionMetadata{{
				ID:          0,
				Leader:      0,
				LeaderEpoch: 123,
				Replicas:    []int32{0, 1, 2},
				Isr:         []int32{0, 1, 2},
			}},
			TopicAuthorizedOperations: 345,
		}},
		ClusterAuthorizedOperations: 234,
	}

	testResponse(t, "one topic V8", response, oneTopicMetadataResponseV8)
}

func TestMetadataResponseRoundTripV1(t *testing.T) {
	response := &MetadataResponse{
		Version: 1,
		Brokers: []*Broker{
			{ID: 1, Host: "localhost", Port: 9092, Rack: nullString("rack0")},
			{ID: 2, Host: "localhost", Port: 9093},
		},
		ControllerID: 1,
		Topics: []*TopicMetadata{
			{
				Name:       "foo",
				IsInternal: true,
				Partitions: []*PartitionMetadata{{
					ID:       0,
					Leader:   1,
					Replicas: []int32{1, 2},
					Isr:      []int32{1},
				}},
			},
			{
				Err:        ErrLeaderNotAvailable,
				Name:       "bar",
				Partitions: []*PartitionMetadata{},
			},
		},
	}

	testResponse(t, "brokers and topics V1", response, nil)
}

func TestMetadataResponseRoundTripV5(t *testing.T) {
	response := &MetadataResponse{
		Version:        5,
		ThrottleTimeMs: 100,
		Brokers:        []*Broker{{ID: 1, Host: "localhost", Port: 9092}},
		ClusterID:      nullString("petrel"),
		ControllerID:   1,
		Topics: []*TopicMetadata{{
			Name: "foo",
			Partitions: []*PartitionMetadata{
				{ID: 0, Leader: 1, Replicas: []int32{1, 2}, Isr: []int32{1}, OfflineReplicas: []int32{2}},
				{ID: 1, Leader: -1, Err: ErrLeaderNotAvailable, Replicas: []int32{2}, Isr: []int32{2}},
			},
		}},
	}

	testResponse(t, "offline replicas V5", response, nil)
}

func TestMetadataResponseTestingHelpers(t *testing.T) {
	response := new(MetadataResponse)
	response.Version = 5
	response.ControllerID = 1
	response.AddBroker(1, "localhost", 9092, nullString("rack0"))
	response.AddBroker(2, "localhost", 9093, nil)
	response.AddTopicPartition("foo", 0, 1, []int32{1, 2}, []int32{1}, []int32{2}, ErrNoError)
	response.AddTopicPartition("foo", 1, 2, []int32{1, 2}, []int32{1, 2}, nil, ErrNoError)

	// updating an existing partition must not add a duplicate
	response.AddTopicPartition("foo", 0, 2, []int32{1, 2}, []int32{1, 2}, nil, ErrNoError)

	if len(response.Topics) != 1 || len(response.Topics[0].Partitions) != 2 {
		t.Fatal("Helpers produced", len(response.Topics), "topics where there was one!")
	}
	if response.Topics[0].Partitions[0].Leader != 2 {
		t.Error("Helpers produced leader", response.Topics[0].Partitions[0].Leader, "should have been 2!")
	}

	response.AddTopic("foo", ErrInvalidTopic)
	if len(response.Topics) != 1 {
		t.Fatal("Helpers produced a duplicate topic entry!")
	}
	if !errors.Is(response.Topics[0].Err, ErrInvalidTopic) {
		t.Error("Helpers did not update the topic error.")
	}
	response.AddTopic("foo", ErrNoError)

	testResponse(t, "testing helpers V5", response, nil)
}

func TestMetadataResponsePartitionDefaults(t *testing.T) {
	response := new(MetadataResponse)
	response.AddTopicPartition("foo", 0, 1, nil, nil, nil, ErrNoError)

	partition := response.Topics[0].Partitions[0]
	if partition.Replicas == nil || len(partition.Replicas) != 0 {
		t.Error("nil replicas should have been defaulted to an empty slice")
	}
	if partition.Isr == nil || len(partition.Isr) != 0 {
		t.Error("nil isr should have been defaulted to an empty slice")
	}
}

func TestMetadataResponseDecodeErrors(t *testing.T) {
	t.Run("negative broker count", func(t *testing.T) {
		err := versionedDecode([]byte{0xff, 0xff, 0xff, 0xfe, 0x00, 0x00, 0x00, 0x00}, &MetadataResponse{}, 0, nil)
		var target PacketDecodingError
		if !errors.As(err, &target) {
			t.Errorf("expected PacketDecodingError, got %v", err)
		}
	})

	t.Run("truncated broker", func(t *testing.T) {
		err := versionedDecode(brokersNoTopicsMetadataResponseV0[:10], &MetadataResponse{}, 0, nil)
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("expected ErrInsufficientData, got %v", err)
		}
	})
}

func TestMetadataResponseUnsupportedVersion(t *testing.T) {
	response := &MetadataResponse{Version: 9}
	if response.isValidVersion() {
		t.Error("version 9 should not be accepted")
	}
	if _, err := encode(response, nil); err == nil {
		t.Error("encoding a version 9 response should fail")
	}
}

func TestMetadataResponseEncodeRecordsTopicCount(t *testing.T) {
	registry := metrics.NewRegistry()
	response := new(MetadataResponse)
	response.AddTopic("foo", ErrNoError)
	response.AddTopic("bar", ErrNoError)

	if _, err := encode(response, registry); err != nil {
		t.Fatal(err)
	}

	hist, ok := registry.Get("metadata-response-topic-count").(metrics.Histogram)
	if !ok {
		t.Fatal("expected a topic count histogram to be registered")
	}
	// the length pass must not double count
	if hist.Count() != 1 || hist.Max() != 2 {
		t.Errorf("expected one sample of two topics, got %d samples, max %d", hist.Count(), hist.Max())
	}
}
