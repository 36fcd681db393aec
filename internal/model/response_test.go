package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResponse(t *testing.T) {
	cases := []struct {
		name      string
		isCorrect bool
		isSure    bool
		want      ResponseStatus
	}{
		{"确定且答对", true, true, SureCorrect},
		{"确定但答错", false, true, SureIncorrect},
		{"不确定但答对", true, false, NotSureCorrect},
		{"不确定且答错", false, false, NotSureIncorrect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyResponse(tc.isCorrect, tc.isSure))
		})
	}
}

func TestQuestionOptionList(t *testing.T) {
	q := &Question{Options: []byte(`["红","绿","蓝"]`)}
	assert.Equal(t, []string{"红", "绿", "蓝"}, q.OptionList())

	empty := &Question{}
	assert.Empty(t, empty.OptionList())
}
