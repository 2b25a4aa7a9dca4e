package common

type LocalMsgType uint32

func (lt *LocalMsgType) Type() LocalMsgType {
	return (*lt) & (0xff00)
}

func (lt *LocalMsgType) SubType() LocalMsgType {
	return (*lt) & (0x00ff)
}

// |--type--|-subtype-|
// 0000 0000 0000 0000
const (
	LocalNoUseType         LocalMsgType = 0
	TrainingMsg            LocalMsgType = 1 << 8
	TrainingMsg_Start      LocalMsgType = TrainingMsg | 1
	TrainingMsg_Step       LocalMsgType = TrainingMsg | 2
	TrainingMsg_Epoch      LocalMsgType = TrainingMsg | 3
	TrainingMsg_Converged  LocalMsgType = TrainingMsg | 4
	TrainingMsg_Finish     LocalMsgType = TrainingMsg | 5
	FeedbackMsg            LocalMsgType = 2 << 8
	FeedbackMsg_Reinforce  LocalMsgType = FeedbackMsg | 1
	FeedbackMsg_Prediction LocalMsgType = FeedbackMsg | 2
)

var localMsgTypeName = map[LocalMsgType]string{
	TrainingMsg_Start:      "training.start",
	TrainingMsg_Step:       "training.step",
	TrainingMsg_Epoch:      "training.epoch",
	TrainingMsg_Converged:  "training.converged",
	TrainingMsg_Finish:     "training.finish",
	FeedbackMsg_Reinforce:  "feedback.reinforce",
	FeedbackMsg_Prediction: "feedback.prediction",
}

func (lt LocalMsgType) String() string {
	if name, ok := localMsgTypeName[lt]; ok {
		return name
	}
	return "unknown"
}
